package domain

import "github.com/google/uuid"

type DestinationImportRowStatus string

const (
	DestinationImportRowStatusCreated DestinationImportRowStatus = "created"
	// DestinationImportRowStatusValid marks a row that passed a dry run.
	DestinationImportRowStatusValid  DestinationImportRowStatus = "valid"
	DestinationImportRowStatusFailed DestinationImportRowStatus = "failed"
)

type DestinationImportRow struct {
	RowNumber     int                        `json:"row_number"`
	Status        DestinationImportRowStatus `json:"status"`
	DestinationID *uuid.UUID                 `json:"destination_id,omitempty"`
	Error         *string                    `json:"error,omitempty"`
	Payload       DestinationFields          `json:"payload"`
}

type DestinationImportResult struct {
	ID          uuid.UUID              `json:"id"`
	UploadedBy  uuid.UUID              `json:"uploaded_by"`
	DryRun      bool                   `json:"dry_run"`
	FileKey     *string                `json:"file_key,omitempty"`
	TotalRows   int                    `json:"total_rows"`
	RowsCreated int                    `json:"rows_created"`
	RowsFailed  int                    `json:"rows_failed"`
	Rows        []DestinationImportRow `json:"rows"`
}
