// Package clusteryaml edits the generated cluster descriptor in place.
//
// The descriptor produced by the bootstrapping tool is a heavily commented
// YAML file. Most settings appear as commented-out lines carrying their
// default, e.g. `# workerCount: 1`. Editing therefore happens line by line:
// a key is uncommented and set without disturbing the surrounding comments.
// Nested settings are patched through a YAML/JSON round trip instead, which
// trades the comments of the touched file for path addressing.
package clusteryaml

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v2"

	"github.com/kubernetes-incubator/kube-aws-up/logger"
)

// Document is an in-memory copy of a cluster descriptor. Edits accumulate in
// memory and hit the disk only on Save, so a failed edit never leaves a
// half-patched file behind.
type Document struct {
	path string
	body string
}

func Load(path string) (*Document, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read cluster descriptor %s", path)
	}
	return &Document{path: path, body: string(raw)}, nil
}

func FromBytes(body []byte) *Document {
	return &Document{body: string(body)}
}

func (d *Document) String() string {
	return d.body
}

func (d *Document) Bytes() []byte {
	return []byte(d.body)
}

// Save writes the patched descriptor back to the file it was loaded from.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("descriptor was not loaded from a file")
	}
	if err := ioutil.WriteFile(d.path, []byte(d.body), 0600); err != nil {
		return errors.Wrapf(err, "failed to write cluster descriptor %s", d.path)
	}
	return nil
}

// SetKey uncomments and sets a top-level key. The value is marshalled as a
// YAML scalar so it parses back with its type and content intact.
func (d *Document) SetKey(key string, value interface{}) error {
	scalar, err := yamlScalar(value)
	if err != nil {
		return err
	}

	re := regexp.MustCompile(`^(?:#\s*)?` + regexp.QuoteMeta(key) + `\s*:.*$`)

	lines := strings.Split(d.body, "\n")
	for i, line := range lines {
		if re.MatchString(line) {
			logger.Debugf("descriptor: %s -> %s", strings.TrimSpace(line), scalar)
			lines[i] = fmt.Sprintf("%s: %s", key, scalar)
			d.body = strings.Join(lines, "\n")
			return nil
		}
	}
	return fmt.Errorf("key %q not found in cluster descriptor", key)
}

// SetPath sets a dotted path like `worker.nodePools.0.count`. Comments in
// the descriptor do not survive this operation.
func (d *Document) SetPath(path, value string) error {
	jsonDoc, err := yamlToJSON(d.body)
	if err != nil {
		return errors.Wrap(err, "failed to parse cluster descriptor")
	}

	if prev := gjson.Get(jsonDoc, path); prev.Exists() {
		logger.Debugf("descriptor: %s: %s -> %s", path, prev.Raw, value)
	}

	patched, err := sjson.Set(jsonDoc, path, typedValue(value))
	if err != nil {
		return errors.Wrapf(err, "failed to set %s", path)
	}

	body, err := jsonToYAML(patched)
	if err != nil {
		return errors.Wrap(err, "failed to serialize patched descriptor")
	}
	d.body = body
	return nil
}

func yamlScalar(value interface{}) (string, error) {
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal descriptor value")
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// typedValue keeps numbers and booleans typed when they round-trip through
// JSON, falling back to a plain string.
func typedValue(value string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	return v
}

func yamlToJSON(doc string) (string, error) {
	var tree map[interface{}]interface{}
	if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
		return "", err
	}
	out, err := json.Marshal(stringifyKeys(tree))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func jsonToYAML(doc string) (string, error) {
	var tree map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &tree); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// stringifyKeys rewrites the map[interface{}]interface{} trees produced by
// yaml.v2 into the map[string]interface{} trees encoding/json accepts.
func stringifyKeys(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := map[string]interface{}{}
		for k, val := range v {
			m[fmt.Sprintf("%v", k)] = stringifyKeys(val)
		}
		return m
	case []interface{}:
		for i := range v {
			v[i] = stringifyKeys(v[i])
		}
		return v
	default:
		return v
	}
}
