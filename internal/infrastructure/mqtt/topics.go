package mqtt

import "fmt"

// Topic prefixes for the WardCall MQTT hierarchy.
//
// Device-facing topics carry the bed identifier as the last segment:
// wardcall/{direction}/{leito}. Event topics mirror the WebSocket
// event names so integrations see the same vocabulary as dashboards.
const (
	// TopicPrefix is the base for all WardCall topics.
	TopicPrefix = "wardcall"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "wardcall/system"
)

// Topics provides builders for WardCall MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// Intake returns the topic a bedside device publishes call intakes on.
//
// Example: wardcall/intake/Leito 01
func (Topics) Intake(leito string) string {
	return fmt.Sprintf("%s/intake/%s", TopicPrefix, leito)
}

// IntakeWildcard returns the subscription pattern matching all intakes.
func (Topics) IntakeWildcard() string {
	return TopicPrefix + "/intake/+"
}

// Close returns the topic a device publishes closure requests on.
//
// Example: wardcall/close/Leito 01
func (Topics) Close(leito string) string {
	return fmt.Sprintf("%s/close/%s", TopicPrefix, leito)
}

// CloseWildcard returns the subscription pattern matching all closures.
func (Topics) CloseWildcard() string {
	return TopicPrefix + "/close/+"
}

// Event returns the topic lifecycle events are mirrored on.
//
// Example: wardcall/event/nova-chamada
func (Topics) Event(name string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefix, name)
}

// SystemStatus returns the topic for core online/offline status.
// The LWT is registered here so integrations detect a crashed core.
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// LeitoFromTopic extracts the bed identifier from a device topic such as
// wardcall/intake/{leito}. It returns the last segment unchanged; an
// empty result means the topic had no bed segment.
func LeitoFromTopic(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '/' {
			return topic[i+1:]
		}
	}
	return ""
}
