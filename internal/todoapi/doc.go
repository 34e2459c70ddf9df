// Package todoapi provides an HTTP client for the remote todo service.
//
// # Overview
//
// The service exposes a single todo collection under /api/ and four
// operations on it:
//
//   - GET    /api/      list every todo
//   - POST   /api/      create a todo, the service assigns the id
//   - PATCH  /api/{id}  replace body and completion of a todo
//   - DELETE /api/{id}  remove a todo
//
// # Client Usage
//
//	client, err := todoapi.NewClient("http://localhost:3000", todoapi.Options{
//		Logger: logger,
//	})
//	if err != nil {
//		return err
//	}
//	todo, err := client.Create(ctx, &todoapi.Todo{Body: "Buy milk"})
//
// # Error Handling
//
// Create, Update and Delete return *Error, the package's single error kind.
// Its message is meant for people; errors.Is classifies it:
//
//   - ErrValidation: rejected before any request was sent (missing todo,
//     body empty after trimming)
//   - ErrTransport: the request failed, the service answered with a non-2xx
//     status, or the response could not be decoded
//
// The low-level cause of a transport error is logged through the client's
// zap logger and is not wrapped into the returned error.
//
// List is the exception. By default a failed list is logged and the caller
// receives whatever payload could be parsed, possibly nothing. Options.StrictList
// makes List fail like the other operations.
//
// # Response Shapes
//
// The production store is loose about response bodies. The client accepts:
//
//   - list: an array of todos, or an object such as {"msg": "No todos found"}
//     which is read as an empty list
//   - create: the stored todo, or the insert result {"InsertedID": "..."}
//   - update: the stored todo, or any acknowledgement such as {"success": true},
//     in which case the sent todo is returned
//   - delete: {"success": true}; the raw payload is kept in Ack.Raw
//
// # Thread Safety
//
// Client is safe for concurrent use.
package todoapi
