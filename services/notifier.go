package services

import (
	pubnub "github.com/pubnub/go/v7"
)

// PubNubNotifier publishes realtime events to per-event channels.
type PubNubNotifier struct {
	pn *pubnub.PubNub
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{pn: pn}
}

func (n *PubNubNotifier) Publish(channel string, payload map[string]any) error {
	_, _, err := n.pn.Publish().
		Channel(channel).
		Message(payload).
		Execute()
	return err
}
