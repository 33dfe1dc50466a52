package notfpref

// NotfLevel is how eagerly a member wants to be notified about activity.
// Levels form a total order by integer value; a higher value means more
// frequent notifications ("more eager").
type NotfLevel int

const (
	LevelMuted             NotfLevel = 1
	LevelHushed            NotfLevel = 2
	LevelNormal            NotfLevel = 3
	LevelTracking          NotfLevel = 4
	LevelWatchingFirst     NotfLevel = 5
	LevelTopicSolved       NotfLevel = 6
	LevelTopicProgress     NotfLevel = 7
	LevelWatchingAll       NotfLevel = 8
	LevelEveryPostAllEdits NotfLevel = 9
)

// DefaultLevel applies when a member has no explicit or inherited preference.
const DefaultLevel = LevelNormal

// AllLevels returns every level in ascending eagerness order.
func AllLevels() []NotfLevel {
	return []NotfLevel{
		LevelMuted,
		LevelHushed,
		LevelNormal,
		LevelTracking,
		LevelWatchingFirst,
		LevelTopicSolved,
		LevelTopicProgress,
		LevelWatchingAll,
		LevelEveryPostAllEdits,
	}
}

// IsValid reports whether l is one of the defined levels.
func (l NotfLevel) IsValid() bool {
	return l >= LevelMuted && l <= LevelEveryPostAllEdits
}

// MoreEagerThan reports whether l causes more frequent notifications than o.
func (l NotfLevel) MoreEagerThan(o NotfLevel) bool {
	return l > o
}

func (l NotfLevel) String() string {
	switch l {
	case LevelMuted:
		return "muted"
	case LevelHushed:
		return "hushed"
	case LevelNormal:
		return "normal"
	case LevelTracking:
		return "tracking"
	case LevelWatchingFirst:
		return "watching_first"
	case LevelTopicSolved:
		return "topic_solved"
	case LevelTopicProgress:
		return "topic_progress"
	case LevelWatchingAll:
		return "watching_all"
	case LevelEveryPostAllEdits:
		return "every_post_all_edits"
	default:
		return "unknown"
	}
}

// Description returns the human-readable explanation shown next to a level
// in preference settings.
func (l NotfLevel) Description() string {
	switch l {
	case LevelMuted:
		return "No notifications at all"
	case LevelHushed:
		return "Only direct messages and mentions of your @username"
	case LevelNormal:
		return "Replies to your posts, mentions and direct messages"
	case LevelTracking:
		return "Like Normal, plus new-reply counters"
	case LevelWatchingFirst:
		return "Notified about the first post of every new topic"
	case LevelTopicSolved:
		return "Notified when a topic gets marked as solved"
	case LevelTopicProgress:
		return "Notified about big progress in a topic"
	case LevelWatchingAll:
		return "Notified about every new post"
	case LevelEveryPostAllEdits:
		return "Notified about every new post and every edit"
	default:
		return "Unknown notification level"
	}
}
