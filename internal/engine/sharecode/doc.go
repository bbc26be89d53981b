// Package sharecode packs a team into a self contained, URL safe token and
// back again.
//
// A token is the JSON form of a Payload encoded with the unpadded URL safe
// base64 alphabet, so it fits in a single path segment. Decoding is lenient
// about the damage tokens pick up in transit (percent escaping, '+' turned
// into ' ', stripped padding, mixed alphabets) and also reads the older
// percent-encoded format. Every failure is reported as a *DecodeError.
//
// Slots are written either as full character snapshots or as a character
// ID plus a fallback snapshot. Hydrate accepts both and prefers the current
// roster entry over the embedded copy.
package sharecode
