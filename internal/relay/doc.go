// Package relay implements the websocket relay client behind the
// domain.RelayClient capability: one connection, filtered subscriptions
// demultiplexed by id, and best-effort publishes. Multi-relay fan-out,
// retry and reconnection are deliberately out of scope.
package relay
