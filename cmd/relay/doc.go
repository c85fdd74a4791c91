// Package main runs the in-memory websocket relay used by nestkeeper during
// development and tests. It holds no persistent state: published events are
// fanned out to currently-matching subscriptions and then forgotten.
//
// Wire protocol (JSON frames over one websocket):
//
//	{"op":"sub","id":ID,"filter":{"to":PUBKEY,"kinds":[...]}}  open a subscription
//	{"op":"unsub","id":ID}                                     close it
//	{"op":"pub","event":EVENT}                                 publish an event
//	{"op":"event","id":ID,"event":EVENT}                       server → matching subscriber
//	{"op":"ok","id":ID}                                        server acknowledgement
//
// The relay never sees plaintext or private keys; event content is
// ciphertext produced by the envelope schemes.
package main
