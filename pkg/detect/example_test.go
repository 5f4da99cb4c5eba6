package detect_test

import (
	"fmt"
	"log"

	"github.com/thecloudstation/imagegen/pkg/detect"
)

func ExampleDetectProject() {
	result, err := detect.DetectProject("/path/to/project")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Build tool: %s\n", result.BuildTool)
	fmt.Printf("Reason: %s\n", result.Reason)

	if result.HasFramework("spring-boot") {
		fmt.Println("Spring Boot project - the spring-boot generator applies")
	}

	for _, signal := range result.Signals {
		log.Printf("Detected: %s", signal)
	}
}
