// Package stream holds the contract shared by the live update channels.
package stream

// Listener receives the lifecycle and payloads of a push channel.
// OnOpen runs inside Dial, the other callbacks on the channel's reader goroutine.
type Listener interface {
	OnOpen()
	OnMessage(data []byte)
	OnError(err error)
	OnClose()
}
