package parser

import (
	"testing"
)

func FuzzParseFile(f *testing.F) {
	f.Add([]byte(`<?php
namespace App;

use Vendor\Lib\Client;

class Service extends Base implements Runnable {
    use Loggable;

    public function run(?Client $client): Result|Failure {
        try {
            return new Result();
        } catch (Timeout | \Vendor\Halt $e) {
            return $e instanceof Failure ? $e : Failure::wrap($e);
        }
    }
}`))
	f.Add([]byte(`<?php class {`))
	f.Add([]byte(`plain html, no php`))

	f.Fuzz(func(t *testing.T, data []byte) {
		p := NewParser("")
		file, err := p.ParseFile("fuzz.php", data)
		if err != nil {
			return
		}
		for _, ref := range file.References {
			if ref.Name == "" {
				t.Errorf("extracted empty reference name from %q", data)
			}
		}
	})
}
