package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// TallyWebhookPayload is the body the form platform posts for every submission.
type TallyWebhookPayload struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	CreatedAt string          `json:"createdAt"`
	Data      TallySubmission `json:"data"`
}

// TallySubmission carries the answered fields of one form response.
type TallySubmission struct {
	ResponseID   string       `json:"responseId"`
	SubmissionID string       `json:"submissionId"`
	RespondentID string       `json:"respondentId"`
	FormID       string       `json:"formId"`
	FormName     string       `json:"formName"`
	CreatedAt    string       `json:"createdAt"`
	Fields       []TallyField `json:"fields" binding:"required"`
}

// TallyField is one labelled answer.
type TallyField struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value TallyFieldValue `json:"value"`
}

// TallyFieldValue holds an answer that may be a string, a boolean, a list of strings or absent.
type TallyFieldValue struct {
	str   *string
	flag  *bool
	list  []string
	isSet bool
	raw   json.RawMessage
}

// StringValue builds a string answer.
func StringValue(s string) TallyFieldValue { return TallyFieldValue{str: &s, isSet: true} }

// BoolValue builds a boolean answer.
func BoolValue(b bool) TallyFieldValue { return TallyFieldValue{flag: &b, isSet: true} }

// ListValue builds a multi-choice answer.
func ListValue(items ...string) TallyFieldValue { return TallyFieldValue{list: items, isSet: true} }

// UnmarshalJSON accepts string, bool, string array and null. Other shapes keep their raw text.
func (v *TallyFieldValue) UnmarshalJSON(data []byte) error {
	*v = TallyFieldValue{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	v.isSet = true
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		v.str = &s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		v.flag = &b
	case '[':
		var items []interface{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		v.list = make([]string, 0, len(items))
		for _, item := range items {
			switch typed := item.(type) {
			case string:
				v.list = append(v.list, typed)
			case nil:
				v.list = append(v.list, "")
			default:
				encoded, _ := json.Marshal(typed)
				v.list = append(v.list, string(encoded))
			}
		}
	default:
		v.raw = append(json.RawMessage(nil), trimmed...)
	}
	return nil
}

// MarshalJSON writes the answer back in its original shape.
func (v TallyFieldValue) MarshalJSON() ([]byte, error) {
	switch {
	case !v.isSet:
		return []byte("null"), nil
	case v.str != nil:
		return json.Marshal(*v.str)
	case v.flag != nil:
		return json.Marshal(*v.flag)
	case v.list != nil:
		return json.Marshal(v.list)
	case v.raw != nil:
		return v.raw, nil
	}
	return []byte("null"), nil
}

// Text renders the answer as text: lists are joined with ", ", false and absent become "".
func (v TallyFieldValue) Text() string {
	switch {
	case !v.isSet:
		return ""
	case v.str != nil:
		return *v.str
	case v.list != nil:
		return strings.Join(v.list, ", ")
	case v.flag != nil:
		if *v.flag {
			return strconv.FormatBool(true)
		}
		return ""
	case v.raw != nil:
		return string(v.raw)
	}
	return ""
}

// IsSet reports whether the answer was present and non-null.
func (v TallyFieldValue) IsSet() bool { return v.isSet }
