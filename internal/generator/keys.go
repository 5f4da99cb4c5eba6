package generator

// PropertyPrefix prefixes every generator property, e.g. fabric8.generator.spring-boot.webPort
const PropertyPrefix = "fabric8.generator"

// Key is a recognized generator option with its default value
type Key struct {
	Name    string
	Default string
}

// Options every generator understands through the embedded Base
var (
	KeyName     = Key{Name: "name"}
	KeyAlias    = Key{Name: "alias"}
	KeyFrom     = Key{Name: "from"}
	KeyFromMode = Key{Name: "fromMode"}
	KeyAdd      = Key{Name: "add", Default: "false"}
)

// Property returns the fully qualified property name of a key for a generator
func (k Key) Property(generatorName string) string {
	return PropertyPrefix + "." + generatorName + "." + k.Name
}

// GlobalProperty returns the generator-independent property name of a key
func (k Key) GlobalProperty() string {
	return PropertyPrefix + "." + k.Name
}
