package model

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/db"
)

const sampleColumns = `
samples.id,
samples.uuid,
samples.source,
samples.bits,
samples.bit_length,
samples.created`

// Sample is a record in the `samples` table: one archived generation
type Sample struct {
	ID        int64     `json:"-"`
	UUID      string    `json:"uuid"`
	Source    string    `json:"source"`
	Bits      string    `json:"bits"`
	BitLength int       `json:"bitLength"`
	Created   time.Time `json:"created"`
}

// BitSequence returns the stored bits as a bitstring
func (s *Sample) BitSequence() (bitstring.Bits, error) {
	return bitstring.FromString(s.Bits)
}

func getSampleByRow(row db.Scanner) (*Sample, error) {
	var sample Sample
	if err := row.Scan(&sample.ID, &sample.UUID, &sample.Source, &sample.Bits, &sample.BitLength, &sample.Created); err != nil {
		return nil, err
	}

	return &sample, nil
}

// CreateSample archives a generated bit sequence
func CreateSample(ctx context.Context, source string, bits bitstring.Bits) (*Sample, error) {
	const query = `
INSERT INTO samples (uuid, source, bits, bit_length)
VALUES ($1, $2, $3, $4)
RETURNING ` + sampleColumns

	row := db.Instance().QueryRowContext(ctx, query, uuid.New().String(), source, bits.String(), bits.Len())
	return getSampleByRow(row)
}

// GetSampleByUUID returns a sample based on its UUID
func GetSampleByUUID(ctx context.Context, sampleUUID string) (*Sample, error) {
	const query = `
SELECT ` + sampleColumns + `
FROM samples
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, sampleUUID)
	return getSampleByRow(row)
}

// GetSamples returns a page of samples, newest first
func GetSamples(ctx context.Context, start int64, rows int) ([]*Sample, error) {
	const query = `
SELECT ` + sampleColumns + `
FROM samples
ORDER BY id DESC
OFFSET $1 LIMIT $2`

	result, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	samples := make([]*Sample, 0)
	for result.Next() {
		sample, err := getSampleByRow(result)
		if err != nil {
			return nil, err
		}

		samples = append(samples, sample)
	}

	return samples, result.Err()
}

// DeleteSampleByUUID removes a sample from the archive
// Returns sql.ErrNoRows if the sample does not exist
func DeleteSampleByUUID(ctx context.Context, sampleUUID string) error {
	const query = `
DELETE FROM samples
WHERE uuid = $1
RETURNING id`

	var id int64
	return db.Instance().QueryRowContext(ctx, query, sampleUUID).Scan(&id)
}
