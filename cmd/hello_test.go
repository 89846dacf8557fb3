package cmd

import "testing"

func TestHelloCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "default greeting", args: []string{"hello"}, want: "Hello, World!\n"},
		{name: "with name", args: []string{"hello", "Alice"}, want: "Hello, Alice!\n"},
		{name: "name kept verbatim", args: []string{"hello", "#openstack-ironic folks"}, want: "Hello, #openstack-ironic folks!\n"},
		{name: "too many names", args: []string{"hello", "a", "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("hello error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out != tt.want {
				t.Errorf("hello output = %q, want %q", out, tt.want)
			}
		})
	}
}
