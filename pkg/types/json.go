package types

import "encoding/json"

// Item errors are not JSON values; they are encoded as their message.

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (r PathResult) MarshalJSON() ([]byte, error) {
	type plain PathResult
	return json.Marshal(struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain(r), errorText(r.Error)})
}

func (i BackupItem) MarshalJSON() ([]byte, error) {
	type plain BackupItem
	return json.Marshal(struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain(i), errorText(i.Error)})
}

func (r BackupResult) MarshalJSON() ([]byte, error) {
	type plain BackupResult
	return json.Marshal(struct {
		plain
		PushError string `json:"pushError,omitempty"`
	}{plain(r), errorText(r.PushError)})
}

func (a ApplyAction) MarshalJSON() ([]byte, error) {
	type plain ApplyAction
	return json.Marshal(struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain(a), errorText(a.Error)})
}
