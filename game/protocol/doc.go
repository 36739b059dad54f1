// Package protocol defines the wire messages exchanged with clients.
//
// Every message is a single UTF-8 JSON document with a discriminant
// "type" field. Clients send Inbound envelopes; the server replies with
// the typed outbound structs in this package, either privately to one
// connection (JOIN_SUCCESS, LEAVE_SUCCESS, ERROR) or fanned out to a
// whole room (ROOM_UPDATE, HOST_TRANSFERRED, GAME_STARTED,
// POTATO_PASSED, GAME_ENDED).
package protocol
