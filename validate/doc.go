// Package validate probes an Agent Zero endpoint with the four token
// placements the A2A surface accepts and reports which of them the server
// currently honors.
//
// Each probe fetches the agent card from the .well-known path with the
// token placed differently: embedded in the URL path, as a Bearer header,
// as an X-API-KEY header, or as an api_key query parameter. Probes run
// strictly in that order, one at a time, each with its own timeout; a
// failed probe never aborts the remaining ones. The endpoint is considered
// reachable when at least one probe succeeds.
package validate
