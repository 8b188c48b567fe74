package store

import "github.com/sum529-create/study-graphql/internal/models"

// SeedUsers are the users every fresh store starts with.
func SeedUsers() []models.User {
	return []models.User{
		{ID: "1", FirstName: "kim", LastName: "coco"},
		{ID: "2", FirstName: "Elon", LastName: "Mask"},
	}
}

// SeedTweets are the tweets every fresh store starts with.
func SeedTweets() []models.Tweet {
	return []models.Tweet{
		{ID: "1", Text: "first one!", UserID: "2"},
		{ID: "2", Text: "second one", UserID: "1"},
	}
}
