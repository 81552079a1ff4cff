package crud

import "github.com/dmitrymomot/crudkit/handler"

// Outcome tags a Result.
type Outcome uint8

const (
	// OutcomeFailure reports a failed operation. It is the zero value, so an
	// uninitialized Result is a failure without messages.
	OutcomeFailure Outcome = iota
	// OutcomeSuccess carries a payload echoed to the client as JSON.
	OutcomeSuccess
	// OutcomeRespond carries a complete response returned unchanged.
	OutcomeRespond
)

// Result is the outcome of Save and extra config handlers.
type Result struct {
	outcome  Outcome
	payload  any
	response handler.Response
	messages []string
}

// Success echoes payload back as a 200 JSON body.
func Success(payload any) Result {
	return Result{outcome: OutcomeSuccess, payload: payload}
}

// Respond returns resp to the client unchanged.
// A nil resp is treated as a failure.
func Respond(resp handler.Response) Result {
	if resp == nil {
		return Result{}
	}
	return Result{outcome: OutcomeRespond, response: resp}
}

// Failure reports a failed operation. The messages are appended to those
// collected with Request.AddError and sent as a 400 messages envelope.
func Failure(msgs ...string) Result {
	return Result{outcome: OutcomeFailure, messages: msgs}
}

// Outcome returns the result tag.
func (r Result) Outcome() Outcome { return r.outcome }

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.outcome != OutcomeFailure }

// Payload returns the success payload.
func (r Result) Payload() any { return r.payload }

// Response returns the response of a Respond result.
func (r Result) Response() handler.Response { return r.response }

// Messages returns the failure messages.
func (r Result) Messages() []string { return r.messages }
