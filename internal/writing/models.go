package writing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Writing is a single note. ID and Date are assigned by the repository on
// create; edits only ever touch Title and Contents.
type Writing struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	Contents string             `json:"contents" bson:"contents"`
	Date     time.Time          `json:"date" bson:"date"`
}

// StorePrecision is the timestamp resolution of BSON dates.
const StorePrecision = time.Millisecond

// Now returns the current time truncated to StorePrecision so a value read
// back from the store compares equal to the one written.
func Now() time.Time {
	return time.Now().Truncate(StorePrecision)
}
