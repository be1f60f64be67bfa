// Package scenario loads a graph and a list of messages from YAML.
//
// Message bodies in a scenario are plaintext. Build runs the sender side of
// each transform (encrypting, signing, sampling) so the resulting messages
// are what a receiver would actually get.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/eldtechnologies/graphmsg/internal/message"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Tamper modes corrupt a built message so failure paths can be exercised.
const (
	TamperNone      = ""
	TamperBody      = "body"      // change the body after encrypting or signing
	TamperSignature = "signature" // flip a byte of the (current) signature
	TamperOriginal  = "original"  // flip a byte of a confirmation's original signature
)

// Node is one identity in the scenario.
type Node struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Message describes one send. Original is the body a confirmation refers to.
type Message struct {
	Kind      message.Kind `yaml:"kind"`
	From      string       `yaml:"from"`
	To        string       `yaml:"to"`
	Metadata  string       `yaml:"metadata"`
	Body      string       `yaml:"body"`
	Original  string       `yaml:"original,omitempty"`
	LossLevel uint         `yaml:"loss_level,omitempty"`
	Tamper    string       `yaml:"tamper,omitempty"`
}

// Scenario is the top-level YAML document.
type Scenario struct {
	Nodes    []Node      `yaml:"nodes"`
	Edges    [][2]string `yaml:"edges"`
	Messages []Message   `yaml:"messages"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every structural problem at once. Message ids may name
// nodes that do not exist; delivery reports those as not found.
func (s *Scenario) Validate() error {
	var err error
	ids := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			err = multierr.Append(err, fmt.Errorf("node %d: id is required", i))
			continue
		}
		if ids[n.ID] {
			err = multierr.Append(err, fmt.Errorf("node %d: duplicate id %q", i, n.ID))
		}
		ids[n.ID] = true
	}

	for i, e := range s.Edges {
		for _, id := range e {
			if !ids[id] {
				err = multierr.Append(err, fmt.Errorf("edge %d: unknown node %q", i, id))
			}
		}
	}

	for i, m := range s.Messages {
		if !knownKind(m.Kind) {
			err = multierr.Append(err, fmt.Errorf("message %d: unknown kind %q", i, m.Kind))
		}
		switch m.Tamper {
		case TamperNone, TamperBody, TamperSignature, TamperOriginal:
		default:
			err = multierr.Append(err, fmt.Errorf("message %d: unknown tamper mode %q", i, m.Tamper))
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

func knownKind(k message.Kind) bool {
	for _, known := range message.Kinds {
		if k == known {
			return true
		}
	}
	return false
}
