package acl

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a declarative policy document from YAML.
//
// Document shape:
//
//	roles:
//	  - name: guest
//	  - name: user
//	    parents: [guest]
//	resources:
//	  - name: blog
//	rules:
//	  - effect: allow
//	    roles: [user]
//	    resources: [blog]
//	    privileges: [read, write]
//
// The result carries declarations only; feed it through NewInMemSource
// and BuildPolicy (or a Builder directly) to obtain a queryable Policy.
func ParseYAML(data []byte) (PolicyFile, error) {
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return PolicyFile{}, errors.Join(ErrMalformedPolicy, err)
	}
	return file, nil
}

// ParseJSON decodes a declarative policy document from JSON. The schema
// matches ParseYAML.
func ParseJSON(data []byte) (PolicyFile, error) {
	var file PolicyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return PolicyFile{}, errors.Join(ErrMalformedPolicy, err)
	}
	return file, nil
}
