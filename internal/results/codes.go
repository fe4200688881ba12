package results

import (
	hashids "github.com/speps/go-hashids"
)

// Codes turns result sequence numbers into short public codes and back.
type Codes struct {
	h *hashids.HashID
}

func NewCodes(salt string) (*Codes, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 6
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Codes{h: h}, nil
}

func (c *Codes) Encode(seq int64) string {
	if seq <= 0 {
		return ""
	}
	s, err := c.h.EncodeInt64([]int64{seq})
	if err != nil {
		return ""
	}
	return s
}

func (c *Codes) Decode(code string) (int64, bool) {
	v, err := c.h.DecodeInt64WithError(code)
	if err != nil || len(v) != 1 || v[0] <= 0 {
		return 0, false
	}
	return v[0], true
}
