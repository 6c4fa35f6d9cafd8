package config

import (
	"errors"
	"fmt"
	"os"
)

// ExampleYAML is the starter config written by `jobscout init`. The profile
// mirrors a real search: enterprise customer-success roles, remote or
// Seattle area.
const ExampleYAML = `app:
  data_dir: .

poll:
  interval_minutes: 15

alert:
  # or set JOBSCOUT_WEBHOOK_URL instead of putting the secret in a file
  webhook_url: ""
  username: "Job Search Bot"
  spacing_seconds: 1

profile:
  title_keywords:
    - customer success manager
    - technical account manager
    - solutions engineer
    - customer success engineer
    - client success manager
  exclude_keywords:
    - junior
    - associate
    - director
    - vp
    - vice president
    - head of
    - intern
    - entry level
    - entry-level
  locations:
    - remote
    - work from home
    - wfh
    - seattle
    - washington
    - anywhere
  industries:
    - broadcast
    - media
    - sports
    - video
    - streaming
    - saas
    - software
    - platform
    - cloud
    - data
    - analytics
    - security
    - fintech
    - infrastructure
    - developer tools
    - automation
    - enterprise software
    - b2b

sources:
  linkedin:
    enabled: true
    keywords: Customer Success Manager
    location: United States
  indeed:
    enabled: true
    query: Customer Success Manager
    location: Remote
  email:
    enabled: false
    imap_host: imap.gmail.com
    imap_port: 993
    username: ""
    mailbox: INBOX
`

// WriteExample creates a starter config at path. It refuses to clobber an
// existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(ExampleYAML), 0o644)
}
