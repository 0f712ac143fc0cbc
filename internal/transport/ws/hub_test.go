package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

func TestHubBroadcastsToQuizWatchers(t *testing.T) {
	hub := NewHub()

	watcher := &Connection{QuizID: "quiz-1", Username: "alice", Send: make(chan []byte, 4)}
	other := &Connection{QuizID: "quiz-2", Username: "carol", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastLeaderboard("quiz-1", []model.LeaderboardEntry{
		{Username: "bob", Score: 28, Rank: 1},
	})

	select {
	case data := <-watcher.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MsgLeaderboardUpdate, msg.Type)
		assert.Contains(t, string(msg.Payload), `"bob"`)
	case <-time.After(time.Second):
		t.Fatal("watcher never received leaderboard update")
	}

	// Watchers of other quizzes hear nothing.
	select {
	case <-other.Send:
		t.Fatal("unrelated watcher received message")
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(watcher)
	hub.Unregister(other)
}
