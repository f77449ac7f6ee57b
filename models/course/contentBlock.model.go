package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BlockText  = "text"
	BlockImage = "image"
	BlockVideo = "video"
	BlockQuiz  = "quiz"
	BlockCode  = "code"
	BlockLink  = "link"
)

// ContentBlock is one piece of lesson content. Kind tags the payload;
// payloads of kinds this build does not know about are kept verbatim so
// newer authoring clients keep working against older servers.
type ContentBlock struct {
	gorm.Model
	UID        string         `json:"uid" gorm:"index;not null"`
	LessonID   uint           `json:"lesson_id" gorm:"index;not null"`
	Kind       string         `json:"type" gorm:"default:'text'"`
	OrderIndex int            `json:"order" gorm:"default:0"`
	Payload    datatypes.JSON `json:"payload"`
}

type TextBlock struct {
	Text string `json:"text"`
}

type ImageBlock struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type VideoBlock struct {
	URL             string `json:"url"`
	Provider        string `json:"provider"`
	DurationSeconds int    `json:"duration"`
}

type QuizBlock struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

type CodeBlock struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

type LinkBlock struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// UnknownBlock preserves the raw payload of an unrecognized kind.
type UnknownBlock struct {
	Kind string          `json:"type"`
	Raw  json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into the struct matching Kind. Unrecognized
// kinds decode into UnknownBlock with the payload untouched.
func (b *ContentBlock) Decode() (interface{}, error) {
	payload := []byte(b.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	switch b.Kind {
	case BlockText:
		var v TextBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	case BlockImage:
		var v ImageBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	case BlockVideo:
		var v VideoBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	case BlockQuiz:
		var v QuizBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	case BlockCode:
		var v CodeBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	case BlockLink:
		var v LinkBlock
		err := json.Unmarshal(payload, &v)
		return v, err
	default:
		return UnknownBlock{Kind: b.Kind, Raw: json.RawMessage(payload)}, nil
	}
}

// KnownBlockKind reports whether kind is one of the block kinds this build
// can decode.
func KnownBlockKind(kind string) bool {
	switch kind {
	case BlockText, BlockImage, BlockVideo, BlockQuiz, BlockCode, BlockLink:
		return true
	}
	return false
}
