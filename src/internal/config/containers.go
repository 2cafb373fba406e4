package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultContainerNetwork is the podman network used when none is given.
const DefaultContainerNetwork = "podman"

// Containers is an ordered list of podman containers. In YAML it is written as
// a mapping from container name to its settings.
type Containers []*ContainerConfig

type ContainerConfig struct {
	Name    string `yaml:"-"`
	Image   string `yaml:"image" validate:"required"`
	Command string `yaml:"command,omitempty"`
	// Network defaults to "podman"; set it to "none" to run without one.
	Network     string   `yaml:"network,omitempty"`
	IPv4Address string   `yaml:"ipv4_address,omitempty" validate:"omitempty,ipv4"`
	Env         []string `yaml:"env,omitempty" validate:"dive,required"`
	// Mounts are "source:target[:options]"; relative sources live below the
	// container's data directory.
	Mounts []string `yaml:"mounts,omitempty" validate:"dive,contains=:"`
	// PodmanRunArgs are appended verbatim after the image.
	PodmanRunArgs []string `yaml:"podman_run_args,omitempty"`
}

// NetworkName returns the effective podman network.
func (c *ContainerConfig) NetworkName() string {
	if c.Network == "" {
		return DefaultContainerNetwork
	}
	return c.Network
}

// Names returns the container names in declaration order.
func (c Containers) Names() []string {
	names := make([]string, 0, len(c))
	for _, container := range c {
		names = append(names, container.Name)
	}
	return names
}

// Container returns the container with the given name, or nil.
func (c Containers) Container(name string) *ContainerConfig {
	for _, container := range c {
		if container.Name == name {
			return container
		}
	}
	return nil
}

// UnmarshalYAML reads a mapping of name to container, keeping declaration order.
func (c *Containers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: containers must be a mapping of name to container", node.Line)
	}
	containers := make(Containers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		container := &ContainerConfig{}
		if err := value.Decode(container); err != nil {
			return fmt.Errorf("line %d: container %s: %w", value.Line, key.Value, err)
		}
		container.Name = key.Value
		containers = append(containers, container)
	}
	*c = containers
	return nil
}

// MarshalYAML writes containers back as an ordered mapping.
func (c Containers) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, container := range c {
		var value yaml.Node
		if err := value.Encode(container); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: container.Name},
			&value,
		)
	}
	return node, nil
}

func (c *Config) validateContainers() ValidationErrors {
	var validationErrors ValidationErrors

	seen := make(map[string]bool)
	for i, container := range c.Containers {
		fieldPath := fmt.Sprintf("containers.%d", i)
		if container == nil {
			continue
		}
		if err := validate.Struct(container); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fieldPath, "container "+container.Name)...)
		}
		if container.Name == "" || seen[container.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  "container " + container.Name,
				FieldPath: fieldPath,
				Message:   "container name must be unique and non-empty",
			})
		}
		seen[container.Name] = true
	}

	return validationErrors
}
