package redisrepo

import "fmt"

const (
	PROFILE_KEY      = "profile:%s"     // <userID>
	USER_POSTS_KEY   = "user:%s-posts"  // <userID>
	USER_TWEETS_KEY  = "user:%s-tweets" // <userID>
	ALL_POSTS_KEY    = "posts:all"
	ALL_TWEETS_KEY   = "tweets:all"
	CHAT_CHANNEL_KEY = "chat:%s" // <channelID>
)

func ProfileKey(userID string) string {
	return fmt.Sprintf(PROFILE_KEY, userID)
}

func UserPostsKey(userID string) string {
	return fmt.Sprintf(USER_POSTS_KEY, userID)
}

func UserTweetsKey(userID string) string {
	return fmt.Sprintf(USER_TWEETS_KEY, userID)
}

func ChatChannelKey(channelID string) string {
	return fmt.Sprintf(CHAT_CHANNEL_KEY, channelID)
}
