package messaging

type ChangeTopic string

const (
	TrackingTopic   ChangeTopic = "tracking"
	SettingsChanged ChangeTopic = "settings_changed"
)
