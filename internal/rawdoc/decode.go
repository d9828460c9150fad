package rawdoc

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// DecodeJSON parses a structured document into a Mapping. Numbers decode
// as json.Number so amounts reach Coerce without a float round trip.
func DecodeJSON(data []byte) (Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return Mapping(m), nil
}

// DecodeJSONLenient retries a failed strict parse through json-repair,
// which recovers the defects common in utility exports (trailing commas,
// single quotes, truncated tails). When repair also fails, the strict
// error is returned.
func DecodeJSONLenient(data []byte) (Mapping, error) {
	m, err := DecodeJSON(data)
	if err == nil {
		return m, nil
	}
	repaired, rerr := jsonrepair.RepairJSON(string(data))
	if rerr != nil {
		return nil, err
	}
	m, lerr := DecodeJSON([]byte(repaired))
	if lerr != nil {
		return nil, err
	}
	return m, nil
}

// DecodeXML parses a tagged document into its element tree. Tags are
// stored by local name, so lookups work whatever namespace prefixes the
// preparation utility emitted.
func DecodeXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: localName(t.Name.Local)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("decode xml: multiple document roots")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("decode xml: no document element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("decode xml: unexpected end of document")
	}
	return root, nil
}
