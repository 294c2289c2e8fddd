package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const MEASUREMENT = "appliances"
const NAME_TAG = "name"
const TIME_FORMAT = "2006-01-02 15:04:05Z"

type Point struct {
	Measurement string
	Tags        map[string]string
	Time        time.Time
	Fields      map[string]interface{}
}

func (point Point) Name() string {
	return point.Tags[NAME_TAG]
}

func (point Point) String() string {
	var fields []string

	for key, value := range point.Fields {
		fields = append(fields, fmt.Sprintf("%s=%v", key, value))
	}
	sort.Strings(fields)

	return fmt.Sprintf("%s,%s=%s %s", point.Measurement, NAME_TAG, point.Name(), strings.Join(fields, ","))
}

// One cycle's points, all sharing the cycle timestamp.
type Batch struct {
	Time   time.Time
	Points []Point
}

func NewBatch(now time.Time) Batch {
	return Batch{
		Time: now.UTC().Truncate(time.Second),
	}
}

// Add a point for the named appliance.
// Returns false and skips the point if there are no fields.
func (batch *Batch) Add(name string, fields map[string]interface{}) bool {
	if len(fields) == 0 {
		return false
	}

	batch.Points = append(batch.Points, Point{
		Measurement: MEASUREMENT,
		Tags:        map[string]string{NAME_TAG: name},
		Time:        batch.Time,
		Fields:      fields,
	})

	return true
}

func (batch Batch) Len() int {
	return len(batch.Points)
}

func (batch Batch) Timestamp() string {
	return batch.Time.Format(TIME_FORMAT)
}

func (batch Batch) String() string {
	var points []string

	for _, point := range batch.Points {
		points = append(points, point.String())
	}

	return fmt.Sprintf("%s [%s]", batch.Timestamp(), strings.Join(points, "; "))
}
