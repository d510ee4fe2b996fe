// Package announce publishes structure lifecycle events over MQTT and
// routes inbound fixture commands back into the structure.
//
// Outbound, it implements the structure's Announcer contract: model
// rebuilds and fixture additions/removals become retained-free JSON
// events on lumencore/structure topics.
//
// Inbound, BindCommands subscribes to the per-fixture command topics so
// external controllers can adjust output brightness, enablement and
// destination host at runtime without touching geometry.
package announce
