package services

import (
	"mallparking/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice@example.com")
	lot := createTestLot(t, 2, 50, "4-wheeler")

	feedback, err := SubmitFeedback(user.UserID, lot.LotID, &models.FeedbackRequest{
		Rating:  4,
		Comment: "clean and easy to find a spot",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, feedback.Rating)
	assert.False(t, feedback.CreatedAt.IsZero())

	_, err = SubmitFeedback(user.UserID, 999, &models.FeedbackRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestGetLotFeedbacks(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "bob@example.com")
	lot := createTestLot(t, 1, 30, "4-wheeler")

	_, err := SubmitFeedback(user.UserID, lot.LotID, &models.FeedbackRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = SubmitFeedback(user.UserID, lot.LotID, &models.FeedbackRequest{Rating: 2, Comment: "crowded today"})
	require.NoError(t, err)

	feedbacks, err := GetLotFeedbacks(lot.LotID)
	require.NoError(t, err)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "tester", feedbacks[0].User.Username)

	_, err = GetLotFeedbacks(999)
	assert.ErrorIs(t, err, ErrLotNotFound)
}
