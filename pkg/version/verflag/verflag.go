package verflag

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"mbgatectl/pkg/version"
)

var versionFlag *bool

func AddFlags(fs *pflag.FlagSet) {
	versionFlag = fs.Bool("version", false, "Print version information and quit")
}

// PrintAndExitIfRequested short-circuits the command when --version was set.
func PrintAndExitIfRequested() {
	if versionFlag != nil && *versionFlag {
		fmt.Printf("%s\n", version.Get())
		os.Exit(0)
	}
}
