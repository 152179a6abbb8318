package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wardlink/wardcall-core/internal/call"
	"github.com/wardlink/wardcall-core/internal/infrastructure/mqtt"
)

// subscribeDeviceTopics wires MQTT-provisioned bedside devices into the
// same call service the HTTP routes use, so both transports share one
// set of validation and broadcast semantics.
//
// Intakes arrive on wardcall/intake/{leito} with the same JSON body as
// POST /chamada; closures on wardcall/close/{leito} with an optional
// {leito} body. The topic segment wins when the body omits the bed.
func (s *Server) subscribeDeviceTopics() error {
	if s.mqtt == nil {
		return nil // MQTT not configured; HTTP-only deployment
	}

	topics := mqtt.Topics{}

	s.logger.Info("subscribing to device intake topic", "topic", topics.IntakeWildcard())
	if err := s.mqtt.Subscribe(topics.IntakeWildcard(), 1, s.handleMQTTIntake); err != nil {
		return fmt.Errorf("subscribing to intake topic: %w", err)
	}

	s.logger.Info("subscribing to device close topic", "topic", topics.CloseWildcard())
	if err := s.mqtt.Subscribe(topics.CloseWildcard(), 1, s.handleMQTTClose); err != nil {
		return fmt.Errorf("subscribing to close topic: %w", err)
	}

	return nil
}

// handleMQTTIntake processes a call intake published by a device.
func (s *Server) handleMQTTIntake(topic string, payload []byte) error {
	var req intakeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("parsing intake payload: %w", err)
	}
	if req.Leito == "" {
		req.Leito = mqtt.LeitoFromTopic(topic)
	}

	bed := call.Bed{
		Leito:  req.Leito,
		Andar:  req.Andar,
		Quarto: req.Quarto,
		Ala:    req.Ala,
	}

	_, err := s.calls.Open(context.Background(), bed, call.Criticality(req.Criticidade))
	if err != nil {
		return fmt.Errorf("opening call from %s: %w", topic, err)
	}
	return nil
}

// handleMQTTClose processes a closure published by a device.
func (s *Server) handleMQTTClose(topic string, payload []byte) error {
	var req struct {
		Leito string `json:"leito"`
	}
	if len(payload) > 0 {
		//nolint:errcheck // empty or non-JSON body falls back to the topic segment
		json.Unmarshal(payload, &req)
	}
	if req.Leito == "" {
		req.Leito = mqtt.LeitoFromTopic(topic)
	}

	if err := s.calls.CloseDirect(context.Background(), req.Leito); err != nil {
		return fmt.Errorf("closing call from %s: %w", topic, err)
	}
	return nil
}
