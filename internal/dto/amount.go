package dto

import "encoding/json"

// Amount carries a decimal currency value from a request body. Clients
// send it as either a JSON number or a quoted string; both decode here so
// a malformed value fails amount validation, not body decoding.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string {
	return string(a)
}
