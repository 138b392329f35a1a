package main

import (
	"fmt"
	"os"
)

const (
	banner = `
  __  ____        ______    _____             _
 |  \/  \ \      / / ___|  |  ___|__  ___  __| |
 | |\/| |\ \ /\ / /\___ \  | |_ / _ \/ _ \/ _' |
 | |  | | \ V  V /  ___) | |  _|  __/  __/ (_| |
 |_|  |_|  \_/\_/  |____/  |_|  \___|\___|\__,_|
                                               %s
                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// 로거 초기화 전에 실패했을 수 있으므로 표준 에러에도 출력
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}
