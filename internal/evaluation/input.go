package evaluation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerSet is the on-disk YAML input: the respondent identity plus one
// answer list per section, in section order.
type AnswerSet struct {
	User      UserProfile `json:"user" yaml:"user"`
	Secciones [][]int     `json:"secciones" yaml:"secciones"`
}

type schemaError struct {
	Path    string
	Line    int
	Message string
}

func (e schemaError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d field %s: %s", e.Line, e.Path, e.Message)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Message)
}

func formatSchemaErrors(path string, errs []schemaError) string {
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	var b strings.Builder
	b.WriteString("schema validation failed for ")
	b.WriteString(path)
	for _, e := range errs {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

// LoadAnswerSet parses and validates an answer-set YAML file. The returned
// hash is the SHA-256 of the raw file, recorded in the run log and the
// checksums artifact.
func LoadAnswerSet(path string) (AnswerSet, string, error) {
	var set AnswerSet
	hash, b, err := fileSHA256(path)
	if err != nil {
		return set, "", err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return set, hash, fmt.Errorf("parse %s: %w", path, err)
	}
	schemaErrs := validateAnswerSetYAML(&root)
	if len(schemaErrs) > 0 {
		return set, hash, fmt.Errorf("%s", formatSchemaErrors(path, schemaErrs))
	}
	normalized := yamlNodeToValue(root.Content[0])
	j, err := json.Marshal(normalized)
	if err != nil {
		return set, hash, fmt.Errorf("normalize %s: %w", path, err)
	}
	if err := json.Unmarshal(j, &set); err != nil {
		return set, hash, fmt.Errorf("decode %s: %w", path, err)
	}
	return set, hash, nil
}

func validateAnswerSetYAML(root *yaml.Node) []schemaError {
	if root == nil || len(root.Content) == 0 {
		return []schemaError{{Path: "answers", Line: 0, Message: "empty YAML document"}}
	}
	errList := []schemaError{}
	node := root.Content[0]
	m := validateMapNode(node, "answers", []string{"user", "secciones"}, []string{"user", "secciones"}, &errList)
	if v, ok := m["user"]; ok {
		validateMapNode(v, "answers.user",
			[]string{"nombre", "apellido", "email", "empresa", "telefono", "industria"},
			[]string{"nombre", "apellido", "email", "empresa"}, &errList)
	}
	if v, ok := m["secciones"]; ok {
		seq := validateSequenceNode(v, "answers.secciones", &errList)
		if seq != nil && len(seq) != SectionCount {
			errList = append(errList, schemaError{Path: "answers.secciones", Line: v.Line, Message: fmt.Sprintf("must contain exactly %d sections", SectionCount)})
		}
		for i, item := range seq {
			secPath := fmt.Sprintf("answers.secciones[%d]", i)
			inner := validateSequenceNode(item, secPath, &errList)
			if inner == nil {
				continue
			}
			if len(inner) != QuestionsPerSection {
				errList = append(errList, schemaError{Path: secPath, Line: item.Line, Message: fmt.Sprintf("must contain exactly %d answers", QuestionsPerSection)})
			}
			for j, a := range inner {
				if a.Kind != yaml.ScalarNode || a.Tag != "!!int" {
					errList = append(errList, schemaError{Path: fmt.Sprintf("%s[%d]", secPath, j), Line: a.Line, Message: "must be an integer"})
				}
			}
		}
	}
	return errList
}

func validateMapNode(node *yaml.Node, path string, allowed, required []string, errs *[]schemaError) map[string]*yaml.Node {
	result := map[string]*yaml.Node{}
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Line: 0, Message: "missing object"})
		return result
	}
	if node.Kind != yaml.MappingNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a mapping/object"})
		return result
	}
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}
	seen := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		v := node.Content[i+1]
		key := k.Value
		if prevLine, ok := seen[key]; ok {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: fmt.Sprintf("duplicate key (already defined at line %d)", prevLine)})
			continue
		}
		seen[key] = k.Line
		if !allowedSet[key] {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: "unknown field"})
		}
		result[key] = v
	}
	for _, req := range required {
		if _, ok := result[req]; !ok {
			*errs = append(*errs, schemaError{Path: path + "." + req, Line: node.Line, Message: "missing required field"})
		}
	}
	return result
}

func validateSequenceNode(node *yaml.Node, path string, errs *[]schemaError) []*yaml.Node {
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Line: 0, Message: "missing sequence"})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a sequence/array"})
		return nil
	}
	return node.Content
}

func yamlNodeToValue(node *yaml.Node) interface{} {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return yamlNodeToValue(node.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			m[node.Content[i].Value] = yamlNodeToValue(node.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(node.Content))
		for _, c := range node.Content {
			out = append(out, yamlNodeToValue(c))
		}
		return out
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			return strings.EqualFold(node.Value, "true")
		case "!!int":
			var i int64
			if _, err := fmt.Sscan(node.Value, &i); err == nil {
				return i
			}
			return node.Value
		case "!!float":
			var f float64
			if _, err := fmt.Sscan(node.Value, &f); err == nil {
				return f
			}
			return node.Value
		case "!!null":
			return nil
		default:
			return node.Value
		}
	default:
		return node.Value
	}
}

func fileSHA256(path string) (string, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:]), b, nil
}

// ValidateUser checks the identity fields required before rendering or
// sending a report.
func ValidateUser(u UserProfile) error {
	switch {
	case strings.TrimSpace(u.Nombre) == "":
		return &MissingRequiredDataError{Field: "nombre"}
	case strings.TrimSpace(u.Apellido) == "":
		return &MissingRequiredDataError{Field: "apellido"}
	case strings.TrimSpace(u.Email) == "":
		return &MissingRequiredDataError{Field: "email"}
	case !strings.Contains(u.Email, "@"):
		return &MissingRequiredDataError{Field: "email"}
	case strings.TrimSpace(u.Empresa) == "":
		return &MissingRequiredDataError{Field: "empresa"}
	}
	return nil
}
