package mqtt

// Lumen Core topics follow the flat scheme lumencore/{category}/...
// Outbound structure events and the system status topic are fixed
// strings; fixture commands are addressed per fixture ID.
const (
	// TopicStructureRegenerated carries model rebuild events.
	TopicStructureRegenerated = "lumencore/structure/regenerated"

	// TopicFixtureAdded carries fixture addition events.
	TopicFixtureAdded = "lumencore/structure/fixture/added"

	// TopicFixtureRemoved carries fixture removal events.
	TopicFixtureRemoved = "lumencore/structure/fixture/removed"

	// TopicSystemStatus carries the online payload and the Last Will
	// and Testament. Retained, so new subscribers see the last status.
	TopicSystemStatus = "lumencore/system/status"

	// TopicFixtureCommands matches inbound runtime commands for every
	// fixture. Subscribe to this; the fixture ID is the last segment
	// of the delivered topic.
	TopicFixtureCommands = "lumencore/command/fixture/+"

	// topicFixtureCommandBase is the prefix FixtureCommandTopic builds on.
	topicFixtureCommandBase = "lumencore/command/fixture/"
)

// FixtureCommandTopic returns the command topic addressing a single
// fixture, e.g. lumencore/command/fixture/6a1f0c42.
func FixtureCommandTopic(fixtureID string) string {
	return topicFixtureCommandBase + fixtureID
}
