// Package a2a implements a client for the A2A (Agent-to-Agent) protocol
// dialect spoken by Agent Zero instances.
//
// The dialect is plain JSON over HTTP(S): a message send is a single POST of
// a {"message": ...} envelope, and the agent card is served from the
// .well-known/agent.json path. Authentication is a shared token, most
// commonly embedded in the URL path as /a2a/t-{token}; see the validate
// package for the other accepted placements.
//
// # Messages and parts
//
// A [Message] carries an ordered list of [Part] values. Part is a closed sum
// over [TextPart], [FilePart], and [DataPart], discriminated on the wire by
// the "kind" field. [UnmarshalPart] dispatches on that field; unknown kinds
// decode as DataPart so newer servers don't break older clients.
//
// # Sending
//
//	client := a2a.NewClient("http://localhost:8080", token)
//	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart("hello"))
//	resp, err := client.SendMessage(ctx, msg)
//
// The reply's history can be reduced to the agent's latest text with
// [ExtractResponseText].
//
// The client performs exactly one HTTP exchange per call: no retries, no
// streaming. A non-2xx status is returned as an [*HTTPError] so callers can
// report the status code.
package a2a
