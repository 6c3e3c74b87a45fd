// Copyright (c) 2019 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// resreg-ctl is a command line tool for inspecting the resource registry
// through the REST API of a running agent.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/contiv/resreg/plugins/registry/restapi"
)

var agentAddr string

var cmdChildren = &cobra.Command{
	Use:   "children [parent]",
	Short: "Show resources registered under the given parent (the tree root when omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) == 1 {
			query = "?" + restapi.ParentArg + "=" + url.QueryEscape(args[0])
		}
		data := httpGet(restapi.RestURLRegistryChildren + query)

		payload := restapi.ChildResources{}
		if err := json.Unmarshal(data, &payload); err != nil {
			fmt.Printf("Failed to decode the children listing: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tTYPE\n")
		for _, child := range payload.Children {
			fmt.Fprintf(w, "%s\t%s\n", child.ID, child.Type)
		}
		w.Flush()
	},
}

var cmdAllocations = &cobra.Command{
	Use:   "allocations",
	Short: "Show all resource allocations known to the registry",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		data := httpGet(restapi.RestURLRegistryAllocations)

		payload := restapi.ResourceAllocations{}
		if err := json.Unmarshal(data, &payload); err != nil {
			fmt.Printf("Failed to decode the allocation dump: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintf(w, "RESOURCE\tCONSUMER\n")
		for _, allocation := range payload.Allocations {
			fmt.Fprintf(w, "%s\t%s\n", allocation.Resource, allocation.Consumer)
		}
		w.Flush()
	},
}

func httpGet(path string) []byte {
	client := http.Client{Timeout: 10 * time.Second}
	addr := fmt.Sprintf("http://%s%s", agentAddr, path)

	res, err := client.Get(addr)
	if err != nil {
		fmt.Printf("Failed to query %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		fmt.Printf("Failed to query %s: %s\n", addr, res.Status)
		os.Exit(1)
	}

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("Failed to read the reply of %s: %v\n", addr, err)
		os.Exit(1)
	}
	return data
}

func main() {
	rootCmd := &cobra.Command{Use: "resreg-ctl"}
	rootCmd.PersistentFlags().StringVar(&agentAddr, "agent", "127.0.0.1:9999",
		"address of the REST API of the registry agent")
	rootCmd.AddCommand(cmdChildren)
	rootCmd.AddCommand(cmdAllocations)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
