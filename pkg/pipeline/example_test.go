package pipeline_test

import (
	"fmt"

	"github.com/matzehuels/taxoviz/pkg/pipeline"
)

func ExampleOutputName() {
	fmt.Println(pipeline.OutputName("Animals", "html"))
	fmt.Println(pipeline.OutputName("Natural Language Processing", "svg"))
	// Output:
	// animals_taxonomy.html
	// natural_language_processing_taxonomy.svg
}
