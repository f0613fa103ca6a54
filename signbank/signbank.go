// Package signbank manages built-in and custom sign clip banks.
package signbank

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank/custom"
	"github.com/signtutor-cli/signtutor/util"
	"github.com/signtutor-cli/signtutor/where"
)

// Bank represents an installable signbank.
type Bank struct {
	ID         string
	Name       string
	IsCustom   bool // Reserved for Lua-based banks.
	CreateBank func() (sign.Signbank, error)
}

func (b *Bank) String() string {
	return b.Name
}

// Builtins returns built-in banks. The local clip directory is always
// available, even fully offline.
func Builtins() []*Bank {
	return []*Bank{
		{
			ID:   LocalBankID,
			Name: LocalBankID,
			CreateBank: func() (sign.Signbank, error) {
				return NewLocalBank(), nil
			},
		},
	}
}

// Customs returns all available Lua banks.
func Customs() []*Bank {
	banks, _ := CustomBanks()
	return banks
}

// All returns built-in banks followed by the custom ones.
func All() []*Bank {
	return append(Builtins(), Customs()...)
}

// Get finds a bank by name.
func Get(name string) (*Bank, bool) {
	for _, b := range All() {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Defaults returns the banks named by the configuration, in priority order.
// Unknown names are skipped.
func Defaults() []*Bank {
	var banks []*Bank
	for _, name := range viper.GetStringSlice(key.DefaultSignbanks) {
		if b, ok := Get(name); ok {
			banks = append(banks, b)
		}
	}
	if len(banks) == 0 {
		banks = Builtins()
	}
	return banks
}

// CustomBanks enumerates the Lua bank scripts installed under the signbanks
// directory.
func CustomBanks() ([]*Bank, error) {
	files, err := filesystem.API().ReadDir(where.Signbanks())
	if err != nil {
		return nil, err
	}

	var banks []*Bank
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".lua" {
			continue
		}

		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Signbanks(), f.Name())
		name := util.FileStem(f.Name())

		banks = append(banks, &Bank{
			ID:       custom.IDfromName(name),
			Name:     name,
			IsCustom: true,
			CreateBank: func() (sign.Signbank, error) {
				return custom.LoadBank(path)
			},
		})
	}

	return banks, nil
}
