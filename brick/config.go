package brick

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/CodedInternet/gonxt/nxt"
	"github.com/CodedInternet/gonxt/transport"
	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// CONFIG_VERSION is the range of config file versions this build understands.
const CONFIG_VERSION = "~1.0"

type BrickConfig struct {
	Version   string               `yaml:"version"`
	Transport transport.Config     `yaml:"transport"`
	Motors    map[string]nxt.Motor `yaml:"motors"`
	Drive     *DriveConfig         `yaml:"drive,omitempty"`
}

// DriveConfig names the two motors used for tank style driving.
type DriveConfig struct {
	Left     string `yaml:"left"`
	Right    string `yaml:"right"`
	Regulate bool   `yaml:"regulate"` // use speed regulation while driving
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(filename string) (config BrickConfig, err error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return config, errors.Wrap(err, "unable to read config")
	}

	return ParseConfig(raw)
}

func ParseConfig(raw []byte) (config BrickConfig, err error) {
	if err = yaml.Unmarshal(raw, &config); err != nil {
		return config, errors.Wrap(err, "unable to unmarshal config")
	}

	err = config.Validate()
	return
}

func (c BrickConfig) Validate() error {
	version, err := semver.NewVersion(c.Version)
	if err != nil {
		return errors.Wrapf(err, "config version %q", c.Version)
	}

	constraint, err := semver.NewConstraint(CONFIG_VERSION)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("unable to use config version %s - require %s", c.Version, CONFIG_VERSION)
	}

	if len(c.Motors) == 0 {
		return errors.New("no motors configured")
	}
	// walk in name order so the reported clash is stable
	owners := make(map[nxt.Motor]string, len(c.Motors))
	for _, name := range c.MotorNames() {
		port := c.Motors[name]
		if port != nxt.MotorA && port != nxt.MotorB && port != nxt.MotorC {
			return fmt.Errorf("motor %s: port %s can not be addressed individually", name, port)
		}
		if other, ok := owners[port]; ok {
			return fmt.Errorf("motors %s and %s both use port %s", other, name, port)
		}
		owners[port] = name
	}

	if c.Drive != nil {
		for _, name := range []string{c.Drive.Left, c.Drive.Right} {
			if _, ok := c.Motors[name]; !ok {
				return fmt.Errorf("drive motor %q is not configured", name)
			}
		}
		if c.Drive.Left == c.Drive.Right {
			return errors.New("drive needs two different motors")
		}
	}

	return nil
}

// MotorNames returns the configured aliases sorted by port.
func (c BrickConfig) MotorNames() []string {
	names := make([]string, 0, len(c.Motors))
	for name := range c.Motors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := c.Motors[names[i]], c.Motors[names[j]]
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
	return names
}
