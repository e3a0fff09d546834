package tracks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/dto"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/internal/service/trackservice"
	"github.com/soundvault/vsdwallet/pkg/auth"
	"github.com/soundvault/vsdwallet/pkg/utils"
)

type Service interface {
	AddTrack(ctx context.Context, artistID int, title, genre string, price int64) (*domain.Track, error)
	GetCatalog(ctx context.Context) ([]domain.Track, error)
	GetArtistTracks(ctx context.Context, artistID int) ([]domain.Track, error)
	Purchase(ctx context.Context, buyerID, trackID int) (*domain.Track, error)
}

var validate = validator.New()

type TrackHandler struct {
	trackService Service
}

func New(trackService Service) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
	}
}

// AddTrack godoc
//
//	@Summary		Upload a new work
//	@Description	Register a new track in the catalog with its VSD price.
//	@Tags			Tracks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddTrackRequestDTO	true	"Track payload"
//	@Success		201		{object}	dto.TrackResponseDTO	"Track created"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/tracks [post]
func (h *TrackHandler) AddTrack(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.AddTrackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	track, err := h.trackService.AddTrack(r.Context(), userID, req.Title, req.Genre, req.Price)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toTrackDTO(track))
}

// GetCatalog godoc
//
//	@Summary		Browse the catalog
//	@Description	List all tracks available for licensing, newest first.
//	@Tags			Tracks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TrackResponseDTO	"Catalog"
//	@Success		204	{object}	utils.Response			"No tracks available"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/tracks [get]
func (h *TrackHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.trackService.GetCatalog(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tracks) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No tracks available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTrackDTOs(tracks))
}

// GetMyTracks godoc
//
//	@Summary		List own works
//	@Description	List the authenticated artist's tracks, newest first.
//	@Tags			Tracks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TrackResponseDTO	"Tracks"
//	@Success		204	{object}	utils.Response			"No tracks found"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/tracks/mine [get]
func (h *TrackHandler) GetMyTracks(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	tracks, err := h.trackService.GetArtistTracks(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tracks) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No tracks found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTrackDTOs(tracks))
}

// Purchase godoc
//
//	@Summary		Purchase a track license
//	@Description	Debit the buyer for the track price and credit the artist. A failed artist credit after a committed debit triggers an automatic refund entry.
//	@Tags			Tracks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			trackID	path		int						true	"Track ID"
//	@Success		200		{object}	dto.PurchaseResponseDTO	"Purchase successful"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		404		{object}	utils.Response			"Track not found"
//	@Failure		409		{object}	utils.Response			"Can't purchase own track"
//	@Failure		422		{object}	utils.Response			"Invalid track id"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Failure		503		{object}	utils.Response			"Store unavailable"
//	@Router			/api/user/tracks/{trackID}/purchase [post]
func (h *TrackHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	trackID, err := strconv.Atoi(chi.URLParam(r, "trackID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid track id")
		return
	}

	track, err := h.trackService.Purchase(r.Context(), userID, trackID)
	if err != nil {
		switch {
		case errors.Is(err, trackservice.ErrTrackNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, trackservice.ErrOwnTrack):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ledgerservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, ledgerservice.ErrStoreUnavailable):
			utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PurchaseResponseDTO{
		Message: "purchase successful",
		Track:   track.Title,
	})
}

func toTrackDTO(track *domain.Track) dto.TrackResponseDTO {
	return dto.TrackResponseDTO{
		ID:         track.ID,
		ArtistID:   track.ArtistID,
		Title:      track.Title,
		Genre:      track.Genre,
		Price:      track.Price,
		Plays:      track.Plays,
		UploadedAt: track.UploadedAt,
	}
}

func toTrackDTOs(tracks []domain.Track) []dto.TrackResponseDTO {
	response := make([]dto.TrackResponseDTO, len(tracks))
	for i := range tracks {
		response[i] = toTrackDTO(&tracks[i])
	}
	return response
}
