// Package mqtt provides MQTT client connectivity for WardCall Core.
//
// This package manages:
//   - Connection to the ward broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// MQTT is the device-side transport: bedside call buttons and badge
// readers that speak MQTT instead of HTTP publish to the intake and
// close topics, and the core mirrors every lifecycle event back onto
// the event topics for integrations (paging systems, corridor signs).
//
//	Bedside devices ↔ MQTT Broker ↔ WardCall Core ↔ Dashboards (WebSocket)
//
// The transport is optional; a deployment with HTTP-only devices runs
// with mqtt.enabled=false and loses nothing else.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Receive device intakes
//	err = client.Subscribe(mqtt.Topics{}.IntakeWildcard(), 1,
//	    func(topic string, payload []byte) error {
//	        // parse and open the call
//	        return nil
//	    })
//
//	// Mirror an event
//	topic := mqtt.Topics{}.Event("nova-chamada")
//	client.Publish(topic, payload, 1, false)
package mqtt
