// Package otp provides helpers for generating one-time passwords and
// single-use security tokens.
//
// Codes are short numeric strings meant to be delivered out of band (SMS or
// email) and checked against a stored value. Tokens are longer URL-safe
// strings used to authorize a follow-up sensitive operation.
package otp
