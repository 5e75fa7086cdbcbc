package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const FavoriteEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "toystore",
	"name": "favorite_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "toy_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "occurred_at", "type": {
			"type": "long", "logicalType": "timestamp-millis"
		}}
	]
}`

type FavoriteEventV1 struct {
	UserID     string    `avro:"user_id"`
	ToyID      string    `avro:"toy_id"`
	Action     string    `avro:"action"`
	OccurredAt time.Time `avro:"occurred_at"`
}

func FavoriteEventV1Avro() avro.Schema {
	return avro.MustParse(FavoriteEventSchemaTextV1)
}
