package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTable = "llm_request_events"

// Column names of llm_request_events.
const (
	colID           = "id"
	colTimestamp    = "timestamp"
	colRoundID      = "round_id"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

var (
	llmEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colRoundID, Type: field.TypeString, Default: ""},
		{Name: colProvider, Type: field.TypeString, Default: ""},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool, Default: true},
		{Name: colErrorMessage, Type: field.TypeString, Default: ""},
		{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	}

	llmEventsTableDef = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Columns: []*schema.Column{llmEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Columns: []*schema.Column{llmEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_round_id",
				Columns: []*schema.Column{llmEventsColumns[2]},
			},
		},
	}

	// tables lists every table Open migrates.
	tables = []*schema.Table{llmEventsTableDef}
)

// columns selected when reading whole events, in scan order.
var llmEventColumns = []string{
	colID, colTimestamp, colRoundID, colProvider, colModel, colPurpose,
	colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
	colErrorMessage, colRequestBody, colResponseBody,
}
