package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON keeps the stored document alongside the typed fields. A field
// whose value does not fit its Go type is left zero; the document still holds
// it and is what gets written back.
func (c *Customer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	*c = Customer{raw: append(json.RawMessage(nil), data...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// not an object: kept verbatim, matched by no lookup
		return nil
	}

	decodeField(fields, "customerId", &c.CustomerID)
	decodeField(fields, "name", &c.Name)
	decodeField(fields, "monthlyIncome", &c.MonthlyIncome)
	decodeField(fields, "monthlyExpenses", &c.MonthlyExpenses)
	decodeField(fields, "outstandingLoans", &c.OutstandingLoans)
	decodeField(fields, "loanRepaymentHistory", &c.LoanRepaymentHistory)
	decodeField(fields, "accountBalance", &c.AccountBalance)
	decodeField(fields, "status", &c.Status)

	var score float64
	if decodeField(fields, "creditScore", &score) {
		c.CreditScore = int(score)
	}

	c.storedStatus = c.Status
	return nil
}

// MarshalJSON writes a stored record back as it was read, with only the
// status member replaced when it changed. Records built in code are encoded
// from their fields.
func (c Customer) MarshalJSON() ([]byte, error) {
	if c.raw == nil {
		type fields Customer
		return encodeNoEscape(fields(c))
	}
	if c.Status == c.storedStatus {
		return c.raw, nil
	}
	return setMember(c.raw, "status", c.Status)
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) bool {
	value, ok := fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(value, dst) == nil
}

type member struct {
	key   string
	value json.RawMessage
}

// setMember replaces key in the JSON object doc, keeping member order. A
// missing key is appended.
func setMember(doc json.RawMessage, key string, value any) (json.RawMessage, error) {
	members, err := objectMembers(doc)
	if err != nil {
		return nil, err
	}
	encoded, err := encodeNoEscape(value)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range members {
		if members[i].key == key {
			members[i].value = encoded
			found = true
		}
	}
	if !found {
		members = append(members, member{key: key, value: encoded})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeNoEscape(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func objectMembers(doc json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("customer record is not a JSON object")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in customer record", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	return members, nil
}

// encodeNoEscape is json.Marshal without HTML escaping of <, > and &.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
