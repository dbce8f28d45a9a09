// Package taskapi provides a client for the remote task-management REST
// service.
//
// The service exposes two endpoints:
//   - GET  {base}/GetTasks returns a JSON array of tasks
//   - POST {base}/CreateTask creates a task from a {"Task": ...} body
//
// The client translates between the service's wire format and the internal
// Task type. Priority and Status are optional on the wire and are filled
// with their zero defaults, so every task surfaced downstream is fully
// populated. Callers that need the stored form of a just-created record
// re-fetch instead of trusting the create response.
//
// Non-success HTTP responses surface as *RemoteError carrying the status
// code, status text and a best-effort read of the error body.
//
// # Configuration
//
// The base URL comes from Config.BaseURL, the TASKS_API_BASE_URL
// environment variable, or DefaultBaseURL, in that order. Setting
// TASKS_API_TOKEN_URL (with client id/secret) switches the underlying HTTP
// client to an OAuth2 client-credentials transport.
//
// # Example Usage
//
//	client, err := taskapi.NewClient(ctx, taskapi.ConfigFromEnv())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tasks, err := client.FetchTasks(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
package taskapi
