package dto

import "time"

type AddTrackRequestDTO struct {
	Title string `json:"title" validate:"required,max=255" example:"Neon Skyline"`
	Genre string `json:"genre" validate:"required,max=64" example:"synthwave"`
	Price int64  `json:"price" validate:"gte=0" example:"25"`
}

type TrackResponseDTO struct {
	ID         int       `json:"id" example:"1"`
	ArtistID   int       `json:"artist_id" example:"42"`
	Title      string    `json:"title" example:"Neon Skyline"`
	Genre      string    `json:"genre" example:"synthwave"`
	Price      int64     `json:"price" example:"25"`
	Plays      int       `json:"plays" example:"117"`
	UploadedAt time.Time `json:"uploaded_at" example:"2020-12-09T16:09:57+03:00"`
}

type PurchaseResponseDTO struct {
	Message string `json:"message" example:"purchase successful"`
	Track   string `json:"track" example:"Neon Skyline"`
}
