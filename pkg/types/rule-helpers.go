package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
)

type RuleType string

type LazyType struct {
	Type RuleType `json:"$type"`
}

type JsonType interface {
	Type() RuleType
	New() JsonType
}

var lookup = make(map[RuleType]JsonType)

func Register(iface JsonType) {
	lookup[iface.Type()] = iface
}

type JsonTypes []JsonType

func (l *JsonTypes) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	err := sonic.Unmarshal(b, &raw)
	if err != nil {
		return err
	}
	*l = make(JsonTypes, len(raw))
	var t LazyType
	for i, r := range raw {
		err := sonic.Unmarshal(r, &t)
		if err != nil {
			return err
		}
		factory, ok := lookup[t.Type]
		if !ok {
			return fmt.Errorf("unregistered rule type : %s", t.Type)
		}
		rule := factory.New()
		err = sonic.Unmarshal(r, rule)
		if err != nil {
			return err
		}
		(*l)[i] = rule
	}
	return nil
}

func (l JsonTypes) MarshalJSON() ([]byte, error) {
	b := bytes.Buffer{}
	b.Write([]byte("["))
	for idx, i := range l {
		item, err := sonic.Marshal(i)
		if err != nil {
			continue
		}
		if len(item) > 2 {
			item = slices.Insert(item, len(item)-1, fmt.Appendf(nil, `,"$type":"%s"`, i.Type())...)
		} else {
			item = fmt.Appendf(nil, `{"$type":"%s"}`, i.Type())
		}
		b.Write(item)
		if idx < len(l)-1 {
			b.Write([]byte(","))
		}
	}
	b.Write([]byte("]"))
	return b.Bytes(), nil
}

func FromJsonTypes[K any](arr JsonTypes) []K {
	result := make([]K, 0, len(arr))
	for _, v := range arr {
		if r, ok := v.(K); ok {
			result = append(result, r)
		}
	}
	return result
}
