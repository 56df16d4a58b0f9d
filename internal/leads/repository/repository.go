// Package repository persists confirmed offers for sales follow-up.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ConfirmedOffer is one confirmed lead row.
type ConfirmedOffer struct {
	ID                uuid.UUID
	HandoffToken      string
	Phone             string
	Email             string
	SingleDoors       int
	DoubleDoors       int
	Doors             int
	Material          string
	DoorID            string
	DoorName          string
	FullPrice         int
	TradeInCredit     int
	FinalPrice        int
	OriginalPhotoKey  string
	GeneratedPhotoKey string
	CreatedAt         time.Time
}

// CreateConfirmedOfferParams contains the parameters for recording a lead.
type CreateConfirmedOfferParams struct {
	HandoffToken      string
	Phone             string
	Email             string
	SingleDoors       int
	DoubleDoors       int
	Doors             int
	Material          string
	DoorID            string
	DoorName          string
	FullPrice         int
	TradeInCredit     int
	FinalPrice        int
	OriginalPhotoKey  string
	GeneratedPhotoKey string
}

// CreateConfirmedOffer inserts the lead and returns the stored row.
func (r *Repository) CreateConfirmedOffer(ctx context.Context, params CreateConfirmedOfferParams) (ConfirmedOffer, error) {
	var offer ConfirmedOffer
	err := r.pool.QueryRow(ctx, `
		INSERT INTO offer_leads (
			handoff_token, phone, email, single_doors, double_doors, doors,
			material, door_id, door_name, full_price, trade_in_credit,
			final_price, original_photo_key, generated_photo_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, handoff_token, phone, email, single_doors, double_doors, doors,
			material, door_id, door_name, full_price, trade_in_credit,
			final_price, original_photo_key, generated_photo_key, created_at
	`,
		params.HandoffToken, params.Phone, params.Email, params.SingleDoors,
		params.DoubleDoors, params.Doors, params.Material, params.DoorID,
		params.DoorName, params.FullPrice, params.TradeInCredit,
		params.FinalPrice, params.OriginalPhotoKey, params.GeneratedPhotoKey,
	).Scan(
		&offer.ID, &offer.HandoffToken, &offer.Phone, &offer.Email,
		&offer.SingleDoors, &offer.DoubleDoors, &offer.Doors, &offer.Material,
		&offer.DoorID, &offer.DoorName, &offer.FullPrice, &offer.TradeInCredit,
		&offer.FinalPrice, &offer.OriginalPhotoKey, &offer.GeneratedPhotoKey,
		&offer.CreatedAt,
	)
	if err != nil {
		return ConfirmedOffer{}, err
	}
	return offer, nil
}
