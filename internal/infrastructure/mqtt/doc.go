// Package mqtt connects Lumen Core to its MQTT message bus.
//
// The engine announces structure lifecycle events (model rebuilds,
// fixture additions and removals) and receives runtime commands
// addressed to individual fixtures. The broker decouples the engine
// from dashboards, show controllers and other consumers.
//
// The client reconnects automatically, restores subscriptions after a
// reconnect, and keeps a retained status on TopicSystemStatus: a Last
// Will marks unexpected disconnects, Close publishes a graceful
// offline.
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.TopicFixtureCommands, 1,
//	    func(topic string, payload []byte) error {
//	        // fixture ID is the last topic segment
//	        return nil
//	    })
//
// TLS is enabled per broker config; credentials are optional for local
// development brokers.
package mqtt
