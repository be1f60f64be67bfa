package scenario

import (
	"encoding/base64"
	"fmt"

	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/message"
	"github.com/eldtechnologies/graphmsg/internal/transform"
)

// KeySource supplies key pairs for scenario nodes.
type KeySource func(id string) (identity.KeyPair, error)

// GenerateKeys returns a KeySource that creates fresh keys of rsaBits.
func GenerateKeys(rsaBits int) KeySource {
	return func(string) (identity.KeyPair, error) {
		return identity.GenerateKeyPair(rsaBits)
	}
}

// Build populates a new Registry and prepares every message sender-side.
func Build(s *Scenario, keys KeySource) (*graph.Registry, []message.Message, error) {
	reg := graph.NewRegistry()
	for _, n := range s.Nodes {
		kp, err := keys(n.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("keys for node %q: %w", n.ID, err)
		}
		reg.AddNode(identity.New(n.ID, n.Name, kp))
	}
	for _, e := range s.Edges {
		if err := reg.Connect(e[0], e[1]); err != nil {
			return nil, nil, fmt.Errorf("edge %s-%s: %w", e[0], e[1], err)
		}
	}

	msgs := make([]message.Message, 0, len(s.Messages))
	for i, m := range s.Messages {
		msg, err := prepare(reg, m)
		if err != nil {
			return nil, nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return reg, msgs, nil
}

// prepare runs the sender side of m. Unknown parties or algorithms are left
// for the receiver to reject, so the raw body is passed through unchanged.
func prepare(reg *graph.Registry, m Message) (message.Message, error) {
	switch m.Kind {
	case message.KindCompressed:
		return message.NewCompressed(m.From, m.To, m.Metadata, m.Body), nil

	case message.KindLossy:
		body := m.Body
		if m.Metadata == transform.AlgFFT {
			body = transform.LossyEncode(m.Body)
		}
		return message.NewLossy(m.From, m.To, m.Metadata, body, m.LossLevel), nil

	case message.KindEncrypted:
		receiver, err := reg.Lookup(m.To)
		if err != nil || !transform.SupportsEncryption(m.Metadata) {
			return message.NewEncrypted(m.From, m.To, m.Metadata, m.Body), nil
		}
		msg, err := message.SealFor(m.From, m.To, m.Metadata, receiver.Keys.Public(), m.Body)
		if err != nil {
			return nil, err
		}
		if m.Tamper == TamperBody {
			msg.Body = flipBase64(msg.Body)
		}
		return msg, nil

	case message.KindSigned:
		sender, err := reg.Lookup(m.From)
		if err != nil || !transform.SupportsSignature(m.Metadata) {
			return message.NewSigned(m.From, m.To, m.Metadata, m.Body, nil), nil
		}
		msg, err := message.SignBy(m.From, m.To, m.Metadata, sender.Keys, m.Body)
		if err != nil {
			return nil, err
		}
		switch m.Tamper {
		case TamperBody:
			msg.Body += "!"
		case TamperSignature:
			msg.Signature = flip(msg.Signature)
		}
		return msg, nil

	case message.KindConfirmation:
		sender, err := reg.Lookup(m.From)
		if err != nil || !transform.SupportsSignature(m.Metadata) {
			return message.NewConfirmation(m.From, m.To, m.Metadata, m.Body, nil, nil, transform.Digest(m.Original)), nil
		}
		msg, err := message.ConfirmBy(m.From, m.To, m.Metadata, sender.Keys, m.Original, m.Body)
		if err != nil {
			return nil, err
		}
		switch m.Tamper {
		case TamperBody:
			msg.Signed.Body += "!"
		case TamperSignature:
			msg.Signed.Signature = flip(msg.Signed.Signature)
		case TamperOriginal:
			msg.OriginalSignature = flip(msg.OriginalSignature)
		}
		return msg, nil
	}
	return nil, fmt.Errorf("%w: %q", message.ErrUnknownKind, m.Kind)
}

func flip(b []byte) []byte {
	out := append([]byte(nil), b...)
	if len(out) > 0 {
		out[len(out)-1] ^= 0x01
	}
	return out
}

// flipBase64 flips a bit in the decoded ciphertext so it still decodes
// but fails authentication.
func flipBase64(s string) string {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return base64.StdEncoding.EncodeToString(flip(raw))
}
