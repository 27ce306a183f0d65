package persistence

import (
	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func uuidFromPg(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return uuid.UUID(v.Bytes)
}

// Numeric columns are selected as text and parsed here, keeping exact
// decimal semantics end to end.
func decimalFromText(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, gerrors.Wrap(err, "failed to parse numeric column")
	}
	return d, nil
}

func nullDecimalFromText(v pgtype.Text) (decimal.NullDecimal, error) {
	if !v.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimalFromText(v.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
