package nix

// buildResults is the JSON document printed by nix build --json.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}
