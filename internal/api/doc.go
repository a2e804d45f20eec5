// Package api is the HTTP client for the red packet interception backend.
//
// Every operation takes a context.Context and returns a value with an
// embedded Response. Failures never cross the package boundary as Go errors;
// they come back as Success=false with a Thai Message ready for display, and
// the classified *Error in Response.Err for logging and exit codes:
//
//	client := api.NewClient()
//	res := client.CheckStatusByPhone(ctx, "0812345678")
//	if !res.Success {
//	    if api.IsNetworkError(res.Err) {
//	        // no response received
//	    }
//	    fmt.Println(res.Message)
//	}
//
// # Error kinds
//
//   - KindValidation: a local precondition failed, nothing was sent
//   - KindServer: non-2xx status (body message, per-operation text, or a
//     templated status message)
//   - KindNetwork / KindTimeout: no response was received
//   - KindRequest: the request could not be built
//   - KindParse: a 2xx body could not be decoded
//   - KindCanceled: the caller canceled the context
//
// The census endpoint reports a dedicated offline message and a zero bot
// count when the backend cannot be reached.
//
// Each request carries a fresh X-Request-ID and is recorded in the
// tmcatcher_api_* Prometheus metrics.
package api
