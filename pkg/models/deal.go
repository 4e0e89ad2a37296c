package models

import "time"

// Deal is the business record workflows trigger on and act upon. Field
// structure is open-ended; conditions and field actions address it by
// dot-path through Fields.
type Deal struct {
	ID        string         `json:"id"`
	TeamID    string         `json:"team_id" validate:"required"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Stage returns the deal's pipeline stage, or "" when unset.
func (d *Deal) Stage() string {
	stage, _ := d.Fields["stage"].(string)

	return stage
}

// SetStage moves the deal to the given pipeline stage.
func (d *Deal) SetStage(stage string) {
	if d.Fields == nil {
		d.Fields = make(map[string]any)
	}

	d.Fields["stage"] = stage
}

// Tags returns the deal's tags as strings. Non-string entries are dropped.
func (d *Deal) Tags() []string {
	raw, ok := d.Fields["tags"].([]any)
	if !ok {
		if tags, ok := d.Fields["tags"].([]string); ok {
			return tags
		}

		return nil
	}

	tags := make([]string, 0, len(raw))

	for _, entry := range raw {
		if tag, ok := entry.(string); ok {
			tags = append(tags, tag)
		}
	}

	return tags
}

// AddTag appends tag to the deal's tag set. It reports whether the deal
// changed; adding an already-present tag is a no-op.
func (d *Deal) AddTag(tag string) bool {
	tags := d.Tags()

	for _, existing := range tags {
		if existing == tag {
			return false
		}
	}

	if d.Fields == nil {
		d.Fields = make(map[string]any)
	}

	d.Fields["tags"] = append(tags, tag)

	return true
}
